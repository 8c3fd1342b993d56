package colorx

import "testing"

// TestParseDirective 测试标记属性内嵌颜色指令解析
func TestParseDirective(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		want   string
		wantOK bool
	}{
		{"等号分隔", "c=#ff0000", "#ff0000", true},
		{"冒号分隔", "c:#00ff00", "#00ff00", true},
		{"键不区分大小写", "C=blue", "blue", true},
		{"键前有其他内容", "wave c=rgba(0,0,0,0.2)", "rgba(0,0,0,0.2)", true},
		{"分隔符前后空白", "c = #abcdef", "#abcdef", true},
		{"无指令", "wave", "", false},
		{"空标记", "", "", false},
		{"键后无值", "c=", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDirective(tt.marker)
			if ok != tt.wantOK {
				t.Fatalf("ParseDirective(%q) ok = %v, 期望 %v", tt.marker, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseDirective(%q) = %q, 期望 %q", tt.marker, got, tt.want)
			}
		})
	}
}

// TestPickColorPrecedence 测试颜色来源优先级
func TestPickColorPrecedence(t *testing.T) {
	inherited := func() (string, bool) { return "#inherited", true }
	noInherit := func() (string, bool) { return "", false }

	tests := []struct {
		name      string
		override  string
		marker    string
		inherited func() (string, bool)
		want      string
		wantOK    bool
	}{
		{"覆盖属性优先", "#override", "c=#directive", inherited, "#override", true},
		{"覆盖属性需去空白", "   ", "c=#directive", inherited, "#directive", true},
		{"指令次之", "", "c=#directive", inherited, "#directive", true},
		{"继承兜底", "", "wave", inherited, "#inherited", true},
		{"全部未命中", "", "wave", noInherit, "", false},
		{"继承回调为nil", "", "wave", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickColor(tt.override, tt.marker, tt.inherited)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PickColor = (%q, %v), 期望 (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestPickColorLazyInherit 测试继承回调的惰性调用
// 前两级命中时不应执行祖先链查找。
func TestPickColorLazyInherit(t *testing.T) {
	called := false
	inherited := func() (string, bool) {
		called = true
		return "#inherited", true
	}

	if _, ok := PickColor("#override", "", inherited); !ok {
		t.Fatal("覆盖属性应命中")
	}
	if called {
		t.Error("覆盖属性命中时不应调用继承回调")
	}
}

// TestGradientCacheTTL 测试渐变缓存的有效期
func TestGradientCacheTTL(t *testing.T) {
	cache := NewGradientCache(20.0)

	g1 := cache.Resolve("rgba(255,0,0,0.5)", 0.0)
	if cache.Len() != 1 {
		t.Fatalf("缓存条目数 = %d, 期望 1", cache.Len())
	}

	// TTL 内命中缓存，条目数不变
	g2 := cache.Resolve("rgba(255,0,0,0.5)", 10.0)
	if cache.Len() != 1 {
		t.Errorf("TTL内重复解析不应新增条目: got %d", cache.Len())
	}
	if g1.Stops[0].A != g2.Stops[0].A {
		t.Error("缓存命中应返回相同渐变")
	}

	// TTL 过期后重新计算（覆盖原条目）
	cache.Resolve("rgba(255,0,0,0.5)", 25.0)
	if cache.Len() != 1 {
		t.Errorf("过期重算应覆盖原条目: got %d", cache.Len())
	}

	// 不同颜色各占一条
	cache.Resolve("#2196f3", 25.0)
	if cache.Len() != 2 {
		t.Errorf("不同颜色应各占一条: got %d", cache.Len())
	}
}
