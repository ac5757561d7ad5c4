package xrangesum

// Direct 是无缓存的基线实现：每次查询都遍历区间，写入直接落到数组。
type Direct struct {
	data []int64
}

var _ Summer = (*Direct)(nil)

// NewDirect 创建基线实现，data 由调用方持有，Direct 不复制。
func NewDirect(data []int64) *Direct {
	return &Direct{data: data}
}

// Query 返回 data[left..=right] 的和
func (d *Direct) Query(left, right int) (int64, error) {
	if err := checkRange(left, right, len(d.data)); err != nil {
		return 0, err
	}
	return Sum(d.data, left, right), nil
}

// Update 执行 data[index] = value
func (d *Direct) Update(index int, value int64) error {
	if err := checkIndex(index, len(d.data)); err != nil {
		return err
	}
	d.data[index] = value
	return nil
}
