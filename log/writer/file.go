package writer

import (
	"fmt"
	"io"
	"path/filepath"
)

// RotateConfig 文件路径与轮转配置
type RotateConfig struct {
	Mode             RotateMode
	Filepath         string
	Filename         string
	FileExt          string
	TimeRotateConfig TimeRotateConfig
	SizeRotateConfig SizeRotateConfig
}

// TimeRotateConfig 按时间轮转配置（单位：小时）
type TimeRotateConfig struct {
	MaxAge       int
	RotationTime int
}

// SizeRotateConfig 按大小轮转配置（MaxSize 单位 MB，MaxAge 单位天）
type SizeRotateConfig struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// File 根据 config.Mode 创建轮转文件 writer
func File(config RotateConfig) (io.Writer, error) {
	switch config.Mode {
	case RotateModeTime:
		return timeRotateWriter(config)
	case RotateModeSize:
		return sizeRotateWriter(config)
	default:
		return nil, fmt.Errorf("unsupported rotate mode: %v", config.Mode)
	}
}

func (c *RotateConfig) fileFullPath() string {
	return filepath.Join(c.Filepath, c.Filename+"."+c.FileExt)
}

func (c *RotateConfig) fileFullPathWithFormat(format string) string {
	return filepath.Join(c.Filepath, c.Filename+"."+format+"."+c.FileExt)
}
