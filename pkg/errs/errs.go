// Package errs 定义了核心层向外抛出的三类错误：配置错误、远程服务错误和存储错误。
package errs

import (
	"errors"
	"fmt"
)

// ConfigurationError 表示缺失或非法的配置（例如缺少 API 凭证）。
// 它总是在任何网络访问之前返回。
type ConfigurationError struct {
	Key string
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return "configuration error: " + e.Msg
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Msg)
}

// RemoteServiceError 表示调用 LLM 提供方失败（网络错误、非 2xx 响应或超时）。不做重试。
type RemoteServiceError struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *RemoteServiceError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("remote service %s timed out: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("remote service %s failed: %v", e.Provider, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

// StorageError 表示本地持久化失败，Op 为失败的操作名。
// 返回该错误时，进行中的事务已经回滚。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsConfiguration 判断 err 链中是否包含 ConfigurationError。
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsRemote 判断 err 链中是否包含 RemoteServiceError。
func IsRemote(err error) bool {
	var target *RemoteServiceError
	return errors.As(err, &target)
}

// IsTimeout 判断 err 是否为超时的 RemoteServiceError。
func IsTimeout(err error) bool {
	var target *RemoteServiceError
	return errors.As(err, &target) && target.Timeout
}

// IsStorage 判断 err 链中是否包含 StorageError。
func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}
