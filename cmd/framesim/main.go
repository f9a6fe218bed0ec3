// Command framesim drives a temparena arena through a simulated frame loop
// and reports what each frame cost.
package main

func main() {
	execute()
}
