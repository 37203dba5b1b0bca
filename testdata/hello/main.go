package main

func main() {
	print_int(-42)
	print_int(0)
	print_int(9223372036854775807)
}
