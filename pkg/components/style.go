package components

// StyleKeyRippleColor 波纹颜色自定义属性键
// 子节点未显式指定颜色时，沿祖先链向上查找该属性。
const StyleKeyRippleColor = "rippleColor"

// StyleComponent 节点样式组件
// 保存可被后代继承的自定义样式属性（键值对）。
type StyleComponent struct {
	// Props 自定义属性表，例如 {"rippleColor": "rgba(33,150,243,0.3)"}
	Props map[string]string
}

// Get 读取属性值，不存在或为空时返回 ("", false)
func (s *StyleComponent) Get(key string) (string, bool) {
	if s == nil || s.Props == nil {
		return "", false
	}
	v, ok := s.Props[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
