package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weisyn/pricing/pkg/types"
)

// LoadAppConfig 从文件加载用户配置
//
// 按扩展名选择格式：.json 使用 JSON，.yaml/.yml 使用 YAML。
// oracle.trusted_key_files 中的路径相对于配置文件所在目录解析，
// 读入后合并进 oracle.trusted_keys（同一网络以内联公钥为准）。
func LoadAppConfig(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	appConfig, err := ParseAppConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}

	if err := resolveTrustedKeyFiles(appConfig, filepath.Dir(path)); err != nil {
		return nil, err
	}
	return appConfig, nil
}

// ParseAppConfig 按扩展名解析配置内容
func ParseAppConfig(data []byte, ext string) (*types.AppConfig, error) {
	var appConfig types.AppConfig

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &appConfig); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &appConfig); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("不支持的配置文件格式: %q", ext)
	}

	return &appConfig, nil
}

// resolveTrustedKeyFiles 读取公钥文件并合并到内联公钥
func resolveTrustedKeyFiles(appConfig *types.AppConfig, baseDir string) error {
	if appConfig.Oracle == nil || len(appConfig.Oracle.TrustedKeyFiles) == 0 {
		return nil
	}
	if appConfig.Oracle.TrustedKeys == nil {
		appConfig.Oracle.TrustedKeys = make(map[string]string)
	}

	for network, keyPath := range appConfig.Oracle.TrustedKeyFiles {
		if _, inline := appConfig.Oracle.TrustedKeys[network]; inline {
			continue
		}
		if !filepath.IsAbs(keyPath) {
			keyPath = filepath.Join(baseDir, keyPath)
		}
		data, err := os.ReadFile(keyPath)
		if err != nil {
			return fmt.Errorf("读取网络 %s 的受信公钥文件失败: %w", network, err)
		}
		appConfig.Oracle.TrustedKeys[network] = string(data)
	}
	return nil
}
