package main

func main() {
	a := malloc(16)
	b := malloc(0)
	if a != 0 && b != 0 && a != b {
		print_int(1)
	} else {
		print_int(0)
	}
	free(a)
	free(b)
	free(0)
	print_int(malloc(-1))
}
