package platform

import "testing"

func BenchmarkNormalizeArch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NormalizeArch("x86_64", OSLinux, 64)
	}
}

func BenchmarkValidate(b *testing.B) {
	key := Key{OS: OSLinux, Arch: ArchAMD64}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Validate(key); err != nil {
			b.Fatal(err)
		}
	}
}
