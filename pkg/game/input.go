package game

// InputState 宿主每帧提交的按键保持状态
// 只描述"是否按住"，边沿触发的操作（开始、暂停、重置）由宿主直接调用 Simulation
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}
