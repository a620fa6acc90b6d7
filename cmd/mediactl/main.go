// Command mediactl packs playlists onto fixed-size media images.
package main

func main() {
	execute()
}
