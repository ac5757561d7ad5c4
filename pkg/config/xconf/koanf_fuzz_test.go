package xconf

import (
	"testing"
	"time"
)

// 严格模式只会比宽松模式多拒绝输入：严格解码成功时，宽松解码必须得到相同结果。
func FuzzUnmarshal_StrictImpliesLax(f *testing.F) {
	f.Add([]byte("capacity: 3\nwindow: 10s\n"), false)
	f.Add([]byte("capacity: 3\ncapcity: 4\n"), false)
	f.Add([]byte(`{"capacity":1,"window":"1m"}`), true)
	f.Add([]byte(`{"window":5}`), true)

	type limits struct {
		Capacity int           `koanf:"capacity"`
		Window   time.Duration `koanf:"window"`
	}

	f.Fuzz(func(t *testing.T, data []byte, asJSON bool) {
		format := FormatYAML
		if asJSON {
			format = FormatJSON
		}

		strictCfg, err := NewFromBytes(data, format, WithStrict())
		if err != nil {
			return
		}
		laxCfg, err := NewFromBytes(data, format)
		if err != nil {
			t.Fatalf("lax parse failed after strict parse succeeded: %v", err)
		}

		var strict limits
		if err := strictCfg.Unmarshal("", &strict); err != nil {
			return
		}
		var lax limits
		if err := laxCfg.Unmarshal("", &lax); err != nil {
			t.Fatalf("lax decode failed after strict decode succeeded: %v", err)
		}
		if strict != lax {
			t.Fatalf("strict %+v != lax %+v", strict, lax)
		}
	})
}
