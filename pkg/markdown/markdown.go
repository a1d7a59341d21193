// Package markdown 提供笔记内容的纯函数渲染
// RenderHTML 生成完整 HTML，Preview 生成纯文本预览；两者无状态、无 I/O
package markdown

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// markdownInstance is initialized once and reused. The parser
// configuration never changes and the goldmark instance is safe to
// share; parsing creates per-call state via Parse(reader).
// markdownInstance 只初始化一次并复用，goldmark 实例可安全共享
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
			goldmark.WithRendererOptions(
				// Raw HTML passes through; script elements are stripped
				// afterwards, which is the only sanitization guarantee here.
				// 原始 HTML 直接透传，随后剥离 script 元素，这是唯一的净化保证
				html.WithUnsafe(),
			),
		)
	})
	return markdownInstance
}

var (
	scriptElementRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptOpenRe    = regexp.MustCompile(`(?is)<script\b[^>]*>.*$`)
	scriptCloseRe   = regexp.MustCompile(`(?i)</script\s*>`)
)

// stripScripts removes script elements from rendered HTML. Escaped text
// cannot match (it is already "&lt;script"), so only raw HTML carried
// through markdown is affected.
// stripScripts 从渲染后的 HTML 中删除 script 元素
// 被转义的文本不会命中（已经是 "&lt;script"），只影响透传的原始 HTML
func stripScripts(s string) string {
	s = scriptElementRe.ReplaceAllString(s, "")
	// An unclosed script tag swallows the rest of the output.
	// 未闭合的 script 标签吞掉其后的全部输出
	s = scriptOpenRe.ReplaceAllString(s, "")
	s = scriptCloseRe.ReplaceAllString(s, "")
	return s
}

// RenderHTML converts markdown to HTML. Any script element originating
// from raw HTML is dropped; surrounding literal text is preserved.
// Total: every input, including empty, yields a defined output.
// RenderHTML 将 Markdown 转换为 HTML
// 来自原始 HTML 的 script 元素会被删除，其余文字保留；任意输入都有定义的输出
func RenderHTML(content string) string {
	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(content), &buf); err != nil {
		// goldmark only fails on writer errors, which bytes.Buffer
		// never produces; keep the function total regardless.
		// goldmark 仅在写入失败时报错，bytes.Buffer 不会失败；保持函数完备
		return ""
	}
	return stripScripts(buf.String())
}

// Preview extracts plain text from markdown and truncates it to at
// most maxLen runes. Markup, fence markers and emphasis markers are
// discarded; literal text and inline code spans are kept.
// Preview 从 Markdown 提取纯文本并截断到 maxLen 个字符
// 标记符号被丢弃，字面文本与行内代码保留
func Preview(content string, maxLen int) string {
	if maxLen <= 0 || content == "" {
		return ""
	}

	source := []byte(content)
	reader := text.NewReader(source)
	document := getMarkdown().Parser().Parse(reader)

	var sb strings.Builder
	collected := 0

	// Direct ast.Walk, accumulating raw text segments until enough
	// runes are collected (bureau-style walk instead of a renderer).
	// 直接 ast.Walk 累积文本片段，收集到足够字符后停止
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.CodeSpan:
			// Inline code keeps its literal value, the backticks go.
			// 行内代码保留字面值，反引号丢弃
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				sb.Write(line.Value(source))
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
		}
		collected = len([]rune(sb.String()))
		if collected >= maxLen {
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	out := strings.TrimSpace(sb.String())
	runes := []rune(out)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return out
}
