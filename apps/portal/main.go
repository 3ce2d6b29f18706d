package main

func main() {
	InitAndExecute()
}
