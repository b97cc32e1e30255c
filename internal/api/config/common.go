package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Upload UploadConfig `mapstructure:"upload"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// MongoConfig MongoDB配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
}

// JWTConfig 签名密钥与有效期（小时）
type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	UserExpireHours int    `mapstructure:"user_expire_hours"`
	AdminExpireHour int    `mapstructure:"admin_expire_hours"`
}

// UploadConfig 上传限制
type UploadConfig struct {
	MaxFilesPerPost int `mapstructure:"max_files_per_post"`
	AvatarThumbSize int `mapstructure:"avatar_thumb_size"`
}
