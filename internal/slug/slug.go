// Package slug 生成 URL 标识
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify 把标题转成 URL 标识
// 规则：去除重音符号、转小写、连续的非字母数字替换为单个连字符、去掉首尾连字符
// 纯函数，任意输入都有结果，空串允许产出空 slug（唯一性由调用方处理）
func Slugify(text string) string {
	// NFD 分解后丢弃组合用记号，"Nutrición" -> "Nutricion"
	decomposed := norm.NFD.String(text)

	var b strings.Builder
	lastHyphen := true // 抑制开头的连字符
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// ResolveUnique 在已有集合内找一个不冲突的 slug
// base 不冲突时原样返回，否则依次尝试 base-1、base-2 ...
// existing 必须是同一事务内取到的快照，且更新场景下要排除记录自身的 slug
func ResolveUnique(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
