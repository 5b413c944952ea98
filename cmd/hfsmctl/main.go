// Command hfsmctl is a smoke-test and inspection CLI for hfsm machine
// definitions, laid out the way aretw0-trellis's cmd/trellis is (one
// file per subcommand, rootCmd assembled via init). The core library
// has no CLI, wire, or file format of its own; everything here is an
// outer convenience built on the public builder/report packages.
package main

func main() {
	Execute()
}
