package broaden

import "testing"

func BenchmarkMacroturbulence(b *testing.B) {
	s := lineSpectrum(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Macroturbulence(s, 4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRotation(b *testing.B) {
	s := lineSpectrum(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Rotation(s, 20, 0.6); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolution(b *testing.B) {
	s := lineSpectrum(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resolution(s, 20000); err != nil {
			b.Fatal(err)
		}
	}
}
