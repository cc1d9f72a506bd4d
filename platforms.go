package writeup

// Hostname keys of the built-in platforms.
const (
	KeyNSSCTF   = "nssctf.cn"
	KeyCTFShow  = "ctf.show"
	KeyBUUOJ    = "buuoj.cn"
	KeyXuanji   = "xj.edisec.net"
	KeyCodewars = "codewars.com"
)

// Fallback placeholders inserted when extraction yields nothing.
const (
	XuanjiStepsPlaceholder         = "*（未能自动提取步骤，请从题目页面手动复制各步骤的题目描述）*"
	CodewarsDescriptionPlaceholder = "> *（未能自动提取题目描述，请手动填写）*"
)

// DefaultPlatform is used when no platform matches and no fallback was
// configured.
func DefaultPlatform() *Platform {
	return &Platform{
		Name:       "Default",
		Normalizer: BracketNormalizer{},
	}
}

// NSSCTFPlatform returns the NSSCTF entry. It is also the fallback for
// unrecognized hosts.
func NSSCTFPlatform() *Platform {
	return &Platform{
		Key:         KeyNSSCTF,
		Name:        "NSSCTF",
		DefaultPath: "网安/练习WP/NSSCTF",
		Normalizer:  BracketNormalizer{},
	}
}

// CTFShowPlatform returns the CTF Show entry.
func CTFShowPlatform() *Platform {
	return &Platform{
		Key:         KeyCTFShow,
		Name:        "CTF Show",
		DefaultPath: "网安/练习WP/CTFShow",
		Normalizer:  NewTokenNormalizer("CTF Show", ""),
	}
}

// BUUOJPlatform returns the BUUOJ entry.
func BUUOJPlatform() *Platform {
	return &Platform{
		Key:         KeyBUUOJ,
		Name:        "BUUOJ",
		DefaultPath: "网安/练习WP/BUUOJ",
		Normalizer:  NewTokenNormalizer("BUUOJ", ""),
	}
}

// XuanjiPlatform returns the 玄机 entry. steps may be nil.
func XuanjiPlatform(steps StepsExtractor) *Platform {
	return &Platform{
		Key:              KeyXuanji,
		Name:             "玄机",
		DefaultPath:      "网安/练习WP/玄机",
		Template:         TemplateXuanji,
		Normalizer:       NewTokenNormalizer("玄机", "|—-"),
		Steps:            steps,
		StepsPlaceholder: XuanjiStepsPlaceholder,
	}
}

// CodewarsPlatform returns the Codewars entry. description may be nil.
func CodewarsPlatform(description DescriptionExtractor) *Platform {
	return &Platform{
		Key:                    KeyCodewars,
		Name:                   "Codewars",
		DefaultPath:            "编程/Codewars",
		Template:               TemplateCodewars,
		Normalizer:             NewSuffixNormalizer("Codewars"),
		Description:            description,
		DescriptionPlaceholder: CodewarsDescriptionPlaceholder,
	}
}

// NewDefaultRegistry returns a registry with all built-in platforms in
// their canonical order and NSSCTF as the fallback.
func NewDefaultRegistry(steps StepsExtractor, description DescriptionExtractor) *Registry {
	nss := NSSCTFPlatform()
	r := NewRegistry(nss)
	for _, p := range []*Platform{
		nss,
		CTFShowPlatform(),
		BUUOJPlatform(),
		XuanjiPlatform(steps),
		CodewarsPlatform(description),
	} {
		// Built-in keys are unique.
		_ = r.Register(p)
	}
	return r
}
