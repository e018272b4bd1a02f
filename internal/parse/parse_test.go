package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<script>
var data = [{"str":"너는나와","errInfo":[{"start":0,"end":4,"orgStr":"너는나와","candWord":"너는 나와|너는나 와","help":"띄어쓰기 &gt; 오류<br/>설명"}]}];
render(data);
</script>`

func TestExtractAndDecode(t *testing.T) {
	raw := ExtractDataBlock([]byte(page))
	require.NotNil(t, raw)
	assert.Equal(t, byte('['), raw[0])
	assert.Equal(t, byte(']'), raw[len(raw)-1])

	items, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "너는나와", items[0].Origin)
	assert.Equal(t, []string{"너는 나와", "너는나 와"}, items[0].Suggest)
	assert.Equal(t, []int{1, 1}, items[0].Distances)
	assert.Equal(t, "띄어쓰기 > 오류\n설명", items[0].Help)
}

func TestExtract_Missing(t *testing.T) {
	assert.Nil(t, ExtractDataBlock([]byte("<html></html>")))
	assert.Nil(t, ExtractDataBlock([]byte("data = [1, 2")))
}

func TestNoError(t *testing.T) {
	assert.True(t, NoError([]byte("<p>맞춤법과 문법 오류를 찾지 못했습니다.</p>")))
	assert.False(t, NoError([]byte(page)))
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("[{"))
	assert.Error(t, err)

	items, err := Decode([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, items)
}
