package camera

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var deviceNumberPattern = regexp.MustCompile(`video(\d+)$`)

// LinuxDiscovery はLinux環境でのカメラデバイス検出を実装する
type LinuxDiscovery struct {
	pattern string // 走査するパスのglobパターン
}

// NewLinuxDiscovery は /dev/video* を走査するLinuxDiscoveryを作成する
func NewLinuxDiscovery() *LinuxDiscovery {
	return NewLinuxDiscoveryWithPattern("/dev/video*")
}

// NewLinuxDiscoveryWithPattern は任意のglobパターンを走査するLinuxDiscoveryを作成する
func NewLinuxDiscoveryWithPattern(pattern string) *LinuxDiscovery {
	return &LinuxDiscovery{pattern: pattern}
}

// ScanDevices はシステム内の利用可能なカメラデバイスをスキャンする
func (d *LinuxDiscovery) ScanDevices(ctx context.Context) ([]string, error) {
	matches, err := filepath.Glob(d.pattern)
	if err != nil {
		return nil, errors.Wrap(err, "デバイスのスキャンに失敗")
	}

	// デバイス番号でソート（文字列順だと video10 が video2 より前になる）
	sort.SliceStable(matches, func(i, j int) bool {
		return extractDeviceNumber(matches[i]) < extractDeviceNumber(matches[j])
	})

	var devices []string
	for _, match := range matches {
		select {
		case <-ctx.Done():
			return devices, ctx.Err()
		default:
		}

		if d.IsDeviceAvailable(ctx, match) {
			devices = append(devices, match)
		}
	}

	return devices, nil
}

// IsDeviceAvailable は指定されたデバイスが利用可能かチェックする
func (d *LinuxDiscovery) IsDeviceAvailable(_ context.Context, device string) bool {
	if !isV4L2Device(device) {
		return false
	}

	if _, err := os.Stat(device); err != nil {
		return false
	}

	// 読み取り権限がなければ OpenCV からも開けない
	file, err := os.OpenFile(device, os.O_RDONLY, 0)
	if err != nil {
		return false
	}
	_ = file.Close()

	return true
}

// isV4L2Device はデバイスパスが videoN の形式かチェックする
func isV4L2Device(device string) bool {
	return deviceNumberPattern.MatchString(device)
}

// extractDeviceNumber はデバイスパスから番号を抽出する。取れなければ -1
func extractDeviceNumber(device string) int {
	matches := deviceNumberPattern.FindStringSubmatch(device)
	if len(matches) < 2 {
		return -1
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return -1
	}

	return num
}

// MockDiscovery はテスト用のモックDiscovery実装
type MockDiscovery struct {
	devices []string
	err     error
}

// NewMockDiscovery は新しいMockDiscoveryを作成する
func NewMockDiscovery(devices []string) *MockDiscovery {
	return &MockDiscovery{devices: devices}
}

// ScanDevices はモックデバイス一覧を返す
func (m *MockDiscovery) ScanDevices(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.devices, nil
}

// IsDeviceAvailable はモックデバイスが利用可能かチェックする
func (m *MockDiscovery) IsDeviceAvailable(_ context.Context, device string) bool {
	for _, d := range m.devices {
		if d == device {
			return true
		}
	}
	return false
}

// AddDevice はテスト用にデバイスを追加する
func (m *MockDiscovery) AddDevice(device string) {
	for _, d := range m.devices {
		if d == device {
			return
		}
	}
	m.devices = append(m.devices, device)
}

// RemoveDevice はテスト用にデバイスを削除する
func (m *MockDiscovery) RemoveDevice(device string) {
	for i, d := range m.devices {
		if d == device {
			m.devices = append(m.devices[:i], m.devices[i+1:]...)
			return
		}
	}
}

// SetScanError はテスト用にScanDevicesが返すエラーを設定する
func (m *MockDiscovery) SetScanError(err error) {
	m.err = err
}
