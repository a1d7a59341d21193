package dto

// VersionDTO server version info response
// VersionDTO 服务端版本信息响应
type VersionDTO struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}
