// Package cache holds small string caches keyed by (name, key), used to keep
// hot guild settings such as the command prefix out of the database.
//
// Includes an interface and implementations using redis and in-process memory.
package cache
