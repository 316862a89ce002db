package models

import (
	"github.com/guardian/simmonitor/common/helpers"
	"os"
	"time"
)

const FILE_INFO_HEADER = "文件信息"

/**
creation and modification times of a file the operator asked us to watch, captured once when the job finishes
so that changes to it can be matched up with the run window
*/
type FileMetadata struct {
	Path         string
	CreateTime   *time.Time
	ModifyTime   *time.Time
	ContentType  string
	ErrorMessage string
}

/**
inspects the file at the given path. this never fails; if the file can't be inspected the reason is kept in
ErrorMessage so that it ends up in the log
*/
func NewFileMetadata(path string) FileMetadata {
	statInfo, statErr := os.Stat(path)
	if statErr != nil {
		return FileMetadata{
			Path:         path,
			ErrorMessage: statErr.Error(),
		}
	}

	modTime := statInfo.ModTime()
	createTime := changeTime(statInfo)
	return FileMetadata{
		Path:        path,
		CreateTime:  &createTime,
		ModifyTime:  &modTime,
		ContentType: helpers.ContentTypeForPath(path),
	}
}

func (f FileMetadata) SectionHeader() string {
	return FILE_INFO_HEADER
}

func (f FileMetadata) LogLines() []string {
	lines := []string{"文件路径: " + f.Path}
	if f.ErrorMessage != "" {
		return append(lines, "文件信息获取失败: "+f.ErrorMessage)
	}
	if f.CreateTime != nil {
		lines = append(lines, "文件创建时间: "+f.CreateTime.Format(TIMESTAMP_FORMAT))
	}
	if f.ModifyTime != nil {
		lines = append(lines, "文件最终修改时间: "+f.ModifyTime.Format(TIMESTAMP_FORMAT))
	}
	if f.ContentType != "" {
		lines = append(lines, "文件类型: "+f.ContentType)
	}
	return lines
}
