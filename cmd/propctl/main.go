// Command propctl inspects and edits Android system property areas.
package main

func main() {
	execute()
}
