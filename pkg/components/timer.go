package components

// TimerComponent 通用计时器组件
// 用于处理需要周期触发的行为（如攻击冷却）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "attack"
	TargetTime  float64 // 周期（秒）
	CurrentTime float64 // 当前已累积时间（秒）
	IsReady     bool    // 最近一次 Update 中是否触发过
}
