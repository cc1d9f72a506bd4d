package writeup

import "regexp"

// TemplateID identifies a note template.
type TemplateID string

// Template identifiers.
const (
	TemplateStandard TemplateID = "standard"
	TemplateDetailed TemplateID = "detailed"
	TemplateSimple   TemplateID = "simple"
	TemplateXuanji   TemplateID = "xuanji"
	TemplateCodewars TemplateID = "codewars"
	TemplateCustom   TemplateID = "custom"
)

// TemplateIDs lists every valid identifier, in display order.
var TemplateIDs = []TemplateID{
	TemplateStandard,
	TemplateDetailed,
	TemplateSimple,
	TemplateCustom,
	TemplateXuanji,
	TemplateCodewars,
}

// Valid reports whether id is a known template identifier.
func (id TemplateID) Valid() bool {
	for _, v := range TemplateIDs {
		if v == id {
			return true
		}
	}
	return false
}

// ParseTemplateID validates s as a template identifier.
// Returns EINVALID for unknown identifiers.
func ParseTemplateID(s string) (TemplateID, error) {
	id := TemplateID(s)
	if !id.Valid() {
		return "", Errorf(EINVALID, "unknown template %q", s)
	}
	return id, nil
}

// Template is a note body with {{name}} placeholders.
type Template struct {
	ID      TemplateID
	Name    string
	Content string
}

// Placeholder names recognized by Render.
const (
	PlaceholderTitle       = "title"
	PlaceholderURL         = "url"
	PlaceholderDate        = "date"
	PlaceholderTime        = "time"
	PlaceholderSteps       = "steps"
	PlaceholderDescription = "description"
)

// RenderContext holds placeholder values. Empty fields render as "".
type RenderContext struct {
	Title       string
	URL         string
	Date        string
	Time        string
	Steps       string
	Description string
}

// lookup returns the value for a placeholder name.
func (c RenderContext) lookup(name string) (string, bool) {
	switch name {
	case PlaceholderTitle:
		return c.Title, true
	case PlaceholderURL:
		return c.URL, true
	case PlaceholderDate:
		return c.Date, true
	case PlaceholderTime:
		return c.Time, true
	case PlaceholderSteps:
		return c.Steps, true
	case PlaceholderDescription:
		return c.Description, true
	}
	return "", false
}

var placeholderRe = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Render substitutes every known {{name}} token in tmpl with its value from
// ctx. Values are inserted literally and are not scanned for further
// tokens. Unknown tokens are left as they are.
func Render(tmpl string, ctx RenderContext) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(token string) string {
		name := token[2 : len(token)-2]
		if v, ok := ctx.lookup(name); ok {
			return v
		}
		return token
	})
}

// BuiltinTemplate returns the built-in template for id.
// Returns false for TemplateCustom and unknown identifiers.
func BuiltinTemplate(id TemplateID) (Template, bool) {
	t, ok := builtinTemplates[id]
	return t, ok
}

var builtinTemplates = map[TemplateID]Template{
	TemplateStandard: {
		ID:   TemplateStandard,
		Name: "标准模板",
		Content: `## 基本信息
- **题目名称**：{{title}}
- **题目链接**：{{url}}
- **创建时间**：{{date}} {{time}}
- **考点清单**：

## 解题思路


## 过程和结果记录


## 总结


## 相关知识点


---
*Generated by Obsidian WriteUp Helper*`,
	},
	TemplateDetailed: {
		ID:   TemplateDetailed,
		Name: "详细模板",
		Content: `# {{title}}

## 📋 基本信息
| 项目 | 内容 |
|------|------|
| 题目名称 | {{title}} |
| 题目链接 | {{url}} |
| 创建时间 | {{date}} {{time}} |

## 🎯 考点清单
- [ ]

## 💡 解题思路


## 📝 过程和结果记录


## 🔍 详细分析


## 📚 相关知识点


## 🎉 总结


## 🔗 参考资料


---
*Generated by Obsidian WriteUp Helper v2.0*`,
	},
	TemplateSimple: {
		ID:   TemplateSimple,
		Name: "简洁模板",
		Content: `# {{title}}

**链接**: {{url}}
**时间**: {{date}}

## 思路


## 过程


## 总结

`,
	},
	TemplateXuanji: {
		ID:   TemplateXuanji,
		Name: "玄机模板",
		Content: `## 基本信息
- **题目名称**：{{title}}
- **题目链接**：{{url}}
- **创建时间**：{{date}} {{time}}
- **平台**：玄机 (xj.edisec.net)
- **考点清单**：

## 题目内容

{{steps}}

## 解题思路


## 过程和结果记录


## 总结


## 相关知识点


---
*Generated by Obsidian WriteUp Helper*`,
	},
	TemplateCodewars: {
		ID:   TemplateCodewars,
		Name: "Codewars模板",
		Content: "# 题目：{{title}}\n" +
			"\n" +
			"题目链接：[{{title}}]({{url}})\n" +
			"\n" +
			"> [!NOTE] 题目\n" +
			"{{description}}\n" +
			"\n" +
			"# 我的解决方法：\n" +
			"\n" +
			"```python\n" +
			"\n" +
			"```\n" +
			"\n" +
			"# 我认为最好的评论区解法：\n" +
			"\n" +
			"```python\n" +
			"\n" +
			"```\n",
	},
}
