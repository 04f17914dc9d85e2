package timeline

// Package timeline shapes raw schedule rows into continuous per-vehicle
// operating-day timelines. Normalization resolves midnight wraparound
// and night continuations onto an extended seconds axis; gap filling
// closes uncovered intervals with synthetic idle events so every
// vehicle's day is contiguous.
