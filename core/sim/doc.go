package sim

// Package sim drives the fixed-timestep discharge loop: it queries the load
// profile, computes terminal voltage and power from the cell model, advances
// state of charge by coulomb counting with clamping to [0,1], and records one
// sample per step until a cutoff fires. Reaching a cutoff is normal
// completion, reported as a Reason on the Result.
