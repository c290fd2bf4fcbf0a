// Package tabstop merges keyboard-focus observations into the accumulated
// tab stop sequence.
//
// Every merge discards the previous ranks, orders the combined sequence by
// timestamp and ranks it again from 1. The ranking is therefore dense and
// gapless after every merge, no matter how many merges came before.
package tabstop
