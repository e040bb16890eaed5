package language

import "testing"

func Test_FenceTag_GoFile(t *testing.T) {
	if tag := FenceTag("main.go"); tag != "go" {
		t.Errorf("expected go, got %s", tag)
	}
}

func Test_FenceTag_TypeScript(t *testing.T) {
	if tag := FenceTag("src/components/App.ts"); tag != "typescript" {
		t.Errorf("expected typescript, got %s", tag)
	}
}

func Test_FenceTag_CaseInsensitive(t *testing.T) {
	if tag := FenceTag("README.MD"); tag != "markdown" {
		t.Errorf("expected markdown, got %s", tag)
	}
}

func Test_FenceTag_UnknownExtensionFallsBack(t *testing.T) {
	if tag := FenceTag("data.xyz"); tag != "xyz" {
		t.Errorf("expected bare extension xyz, got %s", tag)
	}
}

func Test_FenceTag_Makefile(t *testing.T) {
	if tag := FenceTag("Makefile"); tag != "makefile" {
		t.Errorf("expected makefile, got %s", tag)
	}
}

func Test_FenceTag_NoExtension(t *testing.T) {
	if tag := FenceTag("LICENSE"); tag != "" {
		t.Errorf("expected empty tag, got %s", tag)
	}
}
