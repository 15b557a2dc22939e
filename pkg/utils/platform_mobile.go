//go:build mobile

package utils

// ebitenmobile 构建（-tags mobile）
const mobileBuild = true
