package utils

import "os"

// MobileEmulateEnv 设置为 "1" 时桌面端按移动端处理（本地调试用）
const MobileEmulateEnv = "AURAFX_MOBILE_EMULATE"

// mobileParticleDivisor 移动端粒子基数的缩减倍数
const mobileParticleDivisor = 2

// IsMobile 是否按移动端运行：移动端构建，或设置了 MobileEmulateEnv
func IsMobile() bool {
	return mobileBuild || os.Getenv(MobileEmulateEnv) == "1"
}

// ParticleBudget 返回当前平台可用的粒子基数，至少为 1
func ParticleBudget(base int) int {
	if IsMobile() {
		base /= mobileParticleDivisor
	}
	return max(1, base)
}
