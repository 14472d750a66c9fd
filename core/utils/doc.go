// Package utils provides value conversion helpers shared by the dataset loader
// and the remote page decoder.
package utils
