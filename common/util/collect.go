package util

// int set backed by a map

type CollectTint map[int]struct{}

func MakeCollectTint() CollectTint {
	return map[int]struct{}{}
}

func (c CollectTint) Add(item int) {
	c[item] = struct{}{}
}

func (c CollectTint) Delete(item int) {
	delete(c, item)
}

func (c CollectTint) Size() int {
	return len(c)
}

func (c CollectTint) Exist(item int) bool {
	_, exist := c[item]
	return exist
}

func (c CollectTint) Export() []int {
	res := make([]int, 0, c.Size())
	for i := range c {
		res = append(res, i)
	}
	return res
}
