package components

// BoundsComponent 节点的屏幕空间包围盒
// 坐标为绝对屏幕坐标（像素），与事件坐标同一坐标系。
type BoundsComponent struct {
	X      float64 // 左上角X坐标(像素)
	Y      float64 // 左上角Y坐标(像素)
	Width  float64 // 宽度(像素)
	Height float64 // 高度(像素)
}

// Contains 判断屏幕坐标点是否落在包围盒内
func (b *BoundsComponent) Contains(px, py float64) bool {
	return px >= b.X && px < b.X+b.Width && py >= b.Y && py < b.Y+b.Height
}

// Center 返回包围盒中心的局部坐标（相对左上角）
func (b *BoundsComponent) Center() (float64, float64) {
	return b.Width / 2, b.Height / 2
}

// ClampLocal 将屏幕坐标转换为局部坐标并钳制到包围盒范围内
//
// 激活点允许来自包围盒外（如委托转发），几何计算前必须钳制，
// 否则覆盖半径会被盒外的点撑大。
func (b *BoundsComponent) ClampLocal(px, py float64) (float64, float64) {
	lx := px - b.X
	ly := py - b.Y
	if lx < 0 {
		lx = 0
	} else if lx > b.Width {
		lx = b.Width
	}
	if ly < 0 {
		ly = 0
	} else if ly > b.Height {
		ly = b.Height
	}
	return lx, ly
}
