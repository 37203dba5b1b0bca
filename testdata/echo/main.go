package main

func main() {
	n := scan_int()
	sum := int64(0)
	for i := int64(0); i < n; i++ {
		v := scan_int()
		print_int(v)
		sum += v
	}
	print_int(sum)
}
