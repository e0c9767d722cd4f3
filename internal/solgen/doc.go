// Package solgen renders one Solidity test contract per shard.
//
// Every overload becomes one externally callable function; overloads
// sharing a return representation share a single result-storage variable,
// which bounds contract size as the overload count grows.
package solgen
