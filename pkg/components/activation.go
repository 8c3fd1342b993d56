package components

// Activation 一次激活的内部值类型
//
// 在输入边界（含委托转发处）构造一次，携带状态机所需的全部字段；
// 不传递原始输入事件，避免用鸭子类型的事件浅拷贝冒充指针事件。
type Activation struct {
	// X, Y 激活点，屏幕坐标（像素）；状态机按目标表面的
	// 包围盒换算为局部坐标并钳制
	X float64
	Y float64

	// FromKeyboard 键盘激活（激活点取表面几何中心）
	FromKeyboard bool

	// Delegated 经由委托祖先转发
	Delegated bool
}
