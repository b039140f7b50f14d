/*
Package supervisor provides fault-tolerant process supervision: a
supervisor starts a set of child processes, restarts them according to a
configurable strategy when they exit, and tears the whole set down when
its own scope is cancelled, forming a supervision tree.
*/
package supervisor
