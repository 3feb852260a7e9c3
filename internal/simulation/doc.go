// Package simulation implements the controller side of one (rounds, port,
// teams) worker: recruiting teams, grouping them into zones by grid
// position, dispatching battle notices, running the per-pair barrier that
// waits for each zone's teams to finish fighting, and moving teams between
// rounds. Each worker owns a disjoint Simulation_t; the rulebook it serves
// teams is shared read-only by pointer across every worker.
package simulation
