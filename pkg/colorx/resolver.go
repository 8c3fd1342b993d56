package colorx

import (
	"regexp"
	"strings"
)

// ColorCacheTTL 继承颜色与渐变缓存的有效期（秒）
//
// 祖先链样式读取逐层进行，重复执行开销随树深增长；
// 低性能档位下 TTL 按 perf.TTLScale 放大。
const ColorCacheTTL = 20.0

// 内嵌颜色指令模式：c=<值> 或 c:<值>，键不区分大小写，
// 允许键与分隔符之间的空白，值延伸到属性值末尾。
var directivePattern = regexp.MustCompile(`(?i)(?:^|[\s;,])c\s*[=:]\s*(\S.*)$`)

// ParseDirective 从标记属性值中提取内嵌颜色指令
//
// 例如 "c=#2196f3"、"wave c: rgba(0,0,0,0.2)" 均可命中。
// 未命中返回 ("", false)。
func ParseDirective(marker string) (string, bool) {
	m := directivePattern.FindStringSubmatch(marker)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return "", false
	}
	return v, true
}

// PickColor 按优先级选取波纹颜色
//
// 参数：
//   - override: 节点显式颜色覆盖属性（原始值，可含空白）
//   - marker: 标记属性值（可能内嵌 c= 指令）
//   - inherited: 继承查找回调，沿祖先链查找 rippleColor 属性；
//     调用方负责缓存，回调仅在前两级未命中时执行
//
// 返回选中的颜色字符串；全部未命中返回 ("", false)，表示使用默认渐变。
func PickColor(override, marker string, inherited func() (string, bool)) (string, bool) {
	if v := strings.TrimSpace(override); v != "" {
		return v, true
	}
	if v, ok := ParseDirective(marker); ok {
		return v, true
	}
	if inherited != nil {
		if v, ok := inherited(); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
