package types

import "testing"

func TestUploadedFile_IsPDF(t *testing.T) {
	tests := []struct {
		name string
		file UploadedFile
		want bool
	}{
		{"mime only", UploadedFile{Name: "notes", MimeType: "application/pdf"}, true},
		{"extension only", UploadedFile{Name: "slides.pdf"}, true},
		{"upper extension", UploadedFile{Name: "SLIDES.PDF", MimeType: "application/octet-stream"}, true},
		{"text file", UploadedFile{Name: "notes.txt", MimeType: "text/plain"}, false},
		{"pdf in middle", UploadedFile{Name: "a.pdf.txt"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.file.IsPDF(); got != tt.want {
				t.Fatalf("IsPDF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCourse_FirstTopic(t *testing.T) {
	if got := (Course{}).FirstTopic(); got != "" {
		t.Fatalf("empty course FirstTopic = %q", got)
	}
	c := Course{Content: []Unit{{ID: "u", Children: nil}}}
	if got := c.FirstTopic(); got != "" {
		t.Fatalf("unit without children FirstTopic = %q", got)
	}
	samples := SampleCourses()
	if got := samples[0].FirstTopic(); got != "Decisions as Outcome Trees" {
		t.Fatalf("sample FirstTopic = %q", got)
	}
	samples[0].Name = "changed"
	if SampleCourses()[0].Name == "changed" {
		t.Fatal("SampleCourses must return a fresh slice")
	}
}
