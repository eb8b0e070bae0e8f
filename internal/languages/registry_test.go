package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLabelRequiredExtensions 确认映射表覆盖最低要求的扩展名。
func TestLabelRequiredExtensions(t *testing.T) {
	classifier := NewClassifier()

	required := []string{
		"js", "ts", "jsx", "tsx", "py", "java", "c", "cpp", "cs", "go", "rs", "swift",
		"kt", "rb", "php", "html", "xml", "json", "yaml", "yml", "toml", "ini", "env", "md", "sh",
	}
	for _, ext := range required {
		assert.NotEqual(t, Unknown, classifier.Label(ext, "x."+ext), "missing label for %s", ext)
	}
}

// TestLabelLookupOrder 验证扩展名优先、基础名兜底、最后返回 Unknown。
func TestLabelLookupOrder(t *testing.T) {
	classifier := NewClassifier()

	assert.Equal(t, "Go", classifier.Label("go", "main.go"))
	assert.Equal(t, "Makefile", classifier.Label("", "makefile"))
	assert.Equal(t, "Dockerfile", classifier.LabelForFile("/repo/Dockerfile"))
	assert.Equal(t, "YAML", classifier.Label("yml", "dockerfile"))
	assert.Equal(t, Unknown, classifier.Label("zzz", "data.zzz"))
}

// TestSplit 验证扩展名与基础名的提取规则，包括点号开头的文件。
func TestSplit(t *testing.T) {
	cases := []struct {
		path string
		ext  string
		base string
	}{
		{path: "src/App.TSX", ext: "tsx", base: "app.tsx"},
		{path: "Makefile", ext: "", base: "makefile"},
		{path: "/x/.env", ext: "", base: ".env"},
		{path: "/x/.eslintrc.json", ext: "json", base: ".eslintrc.json"},
		{path: "archive.tar.gz", ext: "gz", base: "archive.tar.gz"},
	}

	for _, tc := range cases {
		ext, base := Split(tc.path)
		assert.Equal(t, tc.ext, ext, tc.path)
		assert.Equal(t, tc.base, base, tc.path)
	}
}

// TestCategorySets 验证 code/config 两个集合互不重叠。
func TestCategorySets(t *testing.T) {
	classifier := NewClassifier()

	assert.True(t, classifier.IsCode("go"))
	assert.False(t, classifier.IsCode("json"))
	assert.True(t, classifier.IsConfig("json"))
	assert.True(t, classifier.IsConfig("makefile"))
	assert.False(t, classifier.IsConfig("go"))

	for _, ext := range codeExtensions {
		assert.False(t, classifier.IsConfig(ext), ext)
	}
}

// TestLanguagesSorted 验证 language 子命令展示的清单已排序且包含基础名。
func TestLanguagesSorted(t *testing.T) {
	items := NewClassifier().Languages()
	require.NotEmpty(t, items)

	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].Name, items[i].Name)
	}

	var yaml, makefile *LanguageDescriptor
	for i := range items {
		switch items[i].Name {
		case "YAML":
			yaml = &items[i]
		case "Makefile":
			makefile = &items[i]
		}
	}
	require.NotNil(t, yaml)
	require.NotNil(t, makefile)
	assert.Equal(t, []string{".yaml", ".yml"}, yaml.Extensions)
	assert.Equal(t, []string{"makefile"}, makefile.Basenames)
}
