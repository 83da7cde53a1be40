// Package partition implements the mutable clustering state used by the
// search: an item→cluster label vector plus, per cluster, the ordered set of
// its members.
//
// Cluster ids are dense. Opening a cluster appends id Count(); emptying a
// cluster relabels the highest id into the hole, so occupied ids are always
// exactly 0..Count()-1.
package partition
