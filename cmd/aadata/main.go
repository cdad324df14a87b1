// Command aadata saves and loads tables, workbooks and charts and inspects
// the file log.
package main

func main() {
	Execute()
}
