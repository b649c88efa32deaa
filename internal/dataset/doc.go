// Package dataset builds labeled circuit corpora for training and
// evaluation.
//
// A build emits N circuits from one generator configuration; a configured
// fraction of them pass through the injector and are labeled buggy, the
// rest stay clean. Every row is stamped with a strictly increasing sequence
// number from a logical clock and a time-sortable UUID row token, then
// persisted through the store. The whole build is a pure function of the
// configuration (seed included), so two builds from the same config produce
// identical datasets row for row.
package dataset
