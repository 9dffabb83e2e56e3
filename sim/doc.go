// Package sim hosts the simulation: it builds the cluster, drives the tick
// loop, and plays a scripted client against it.
//
// A [Simulator] owns everything — the client, the protocol nodes, and every
// link between them. One tick advances every link (delivering due messages),
// then every live node, then feeds the client its next scripted action if
// the previous one has been fully answered, then ticks the client. The tick
// is the sole source of progress.
//
// The client broadcasts each operation to all nodes (only the primary acts
// on it) and waits for one signed response per live node, verifying each
// against its sender. Expecting alive-node-many responses mirrors the
// protocol's design: every replica that commits answers the client itself.
//
// [Simulator.DestroyNode] removes a node mid-run to exercise crash
// tolerance. Destroying the primary stalls the simulation until the tick
// cap — there is no view change, by design.
package sim
