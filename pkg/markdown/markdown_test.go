package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML(t *testing.T) {
	// Basic markdown conversion
	// 基础 Markdown 转换
	out := RenderHTML("# Title\n\nsome **bold** text")
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderHTML_StripsScriptBlock(t *testing.T) {
	out := RenderHTML("<script>alert(1)</script>text")

	// The script element is excluded, the literal text survives
	// script 元素被排除，字面文本保留
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "text")
}

func TestRenderHTML_StripsUnclosedScript(t *testing.T) {
	out := RenderHTML("before\n\n<script>var x = 1\n")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "var x")
	assert.Contains(t, out, "before")
}

func TestRenderHTML_EscapedScriptTextSurvives(t *testing.T) {
	// Inside a code span the tag is escaped, not raw HTML; it must not
	// be stripped away.
	// 行内代码中的标签会被转义，不是原始 HTML，不应被剥离
	out := RenderHTML("use `<script>` carefully")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderHTML_Total(t *testing.T) {
	assert.Equal(t, "", RenderHTML(""))
}

func TestPreview(t *testing.T) {
	got := Preview("Hello **world**, this is a test", 5)
	assert.Equal(t, "Hello", got)
	assert.Len(t, []rune(got), 5)
}

func TestPreview_ShorterThanMax(t *testing.T) {
	// Fewer extractable characters than maxLen: whole text, untruncated
	// 可提取字符少于 maxLen 时返回全部文本，不截断
	got := Preview("Hello **world**", 100)
	assert.Equal(t, "Hello world", got)
}

func TestPreview_DiscardsMarkers(t *testing.T) {
	src := "# Heading\n\nsome *emphasis* and `inline code`\n\n```\nfenced\n```\n"
	got := Preview(src, 200)

	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "*")
	assert.NotContains(t, got, "`")
	assert.Contains(t, got, "Heading")
	assert.Contains(t, got, "emphasis")
	assert.Contains(t, got, "inline code")
	assert.Contains(t, got, "fenced")
}

func TestPreview_Empty(t *testing.T) {
	assert.Equal(t, "", Preview("", 10))
	assert.Equal(t, "", Preview("anything", 0))
}

func TestPreview_ExactTruncation(t *testing.T) {
	src := strings.Repeat("abc ", 100)
	got := Preview(src, 10)
	assert.Len(t, []rune(got), 10)
}
