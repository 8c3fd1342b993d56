package colorx

import (
	"math"
	"testing"
)

// TestResolveGradientFunctionColor 测试函数式颜色的渐变生成
func TestResolveGradientFunctionColor(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAlpha  float64 // 期望的首个色标不透明度
		wantR      float64
	}{
		{"带alpha", "rgba(255, 0, 0, 0.5)", 0.5, 1.0},
		{"缺省alpha视为1", "rgb(255, 0, 0)", 1.0, 1.0},
		{"alpha低于下限取下限", "rgba(0, 0, 255, 0.01)", MinStopAlpha, 0.0},
		{"容忍空白", "rgba( 255 , 255 , 255 , 0.3 )", 0.3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ResolveGradient(tt.raw)
			if len(g.Stops) < 2 {
				t.Fatalf("色标数不足: got %d", len(g.Stops))
			}
			first := g.Stops[0]
			if math.Abs(first.A-tt.wantAlpha) > 0.001 {
				t.Errorf("首个色标不透明度 = %v, 期望 %v", first.A, tt.wantAlpha)
			}
			if math.Abs(first.R-tt.wantR) > 0.001 {
				t.Errorf("首个色标红色通道 = %v, 期望 %v", first.R, tt.wantR)
			}
			last := g.Stops[len(g.Stops)-1]
			if last.A != 0 {
				t.Errorf("末个色标不透明度应为0, got %v", last.A)
			}
		})
	}
}

// TestResolveGradientHexAndNamed 测试十六进制和命名颜色
func TestResolveGradientHexAndNamed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"十六进制", "#2196f3"},
		{"命名颜色", "blue"},
		{"命名颜色大写", "RED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ResolveGradient(tt.raw)
			if g.Raw != tt.raw {
				t.Errorf("Raw = %q, 期望 %q", g.Raw, tt.raw)
			}
			if g.Stops[0].A <= 0 {
				t.Errorf("首个色标应可见, got A=%v", g.Stops[0].A)
			}
		})
	}
}

// TestResolveGradientFallback 测试无法解析时退回默认渐变
func TestResolveGradientFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"空串", ""},
		{"乱码", "not-a-color"},
		{"残缺函数式", "rgba(1,2)"},
	}

	def := DefaultGradient()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := ResolveGradient(tt.raw)
			if len(g.Stops) != len(def.Stops) {
				t.Fatalf("应退回默认渐变: got %d 个色标", len(g.Stops))
			}
			if g.Stops[0].A != def.Stops[0].A {
				t.Errorf("默认渐变首色标不透明度 = %v, 期望 %v", g.Stops[0].A, def.Stops[0].A)
			}
		})
	}
}

// TestParseFunctionColorChannels 测试通道分解
func TestParseFunctionColorChannels(t *testing.T) {
	r, g, b, a, ok := parseFunctionColor("rgba(51, 102, 204, 0.25)")
	if !ok {
		t.Fatal("应解析成功")
	}
	if math.Abs(r-51.0/255) > 0.001 || math.Abs(g-102.0/255) > 0.001 || math.Abs(b-204.0/255) > 0.001 {
		t.Errorf("通道值不符: r=%v g=%v b=%v", r, g, b)
	}
	if math.Abs(a-0.25) > 0.001 {
		t.Errorf("alpha = %v, 期望 0.25", a)
	}
}
