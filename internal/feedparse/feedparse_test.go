package feedparse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coinwire/internal/fetch"
	"coinwire/internal/types"
)

const rssPayload = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Example News</title>
    <item>
      <title>First story</title>
      <link>https://example.com/1</link>
      <guid>guid-1</guid>
      <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
      <description>Short summary</description>
      <content:encoded><![CDATA[<p>Full body</p>]]></content:encoded>
    </item>
    <item>
      <title>Second story</title>
      <link>https://example.com/2</link>
      <guid>guid-2</guid>
      <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
      <description>Another summary</description>
    </item>
  </channel>
</rss>`

const atomPayload = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"
      xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/">
  <title>Channel uploads</title>
  <entry>
    <id>yt:video:abc12345678</id>
    <yt:videoId>abc12345678</yt:videoId>
    <title>Video title</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc12345678"/>
    <published>2025-06-02T10:00:00+00:00</published>
    <author><name>Some Channel</name></author>
    <media:group>
      <media:thumbnail url="https://i.ytimg.com/vi/abc12345678/hqdefault.jpg" width="480" height="360"/>
      <media:description>Video description text</media:description>
    </media:group>
  </entry>
</feed>`

const emptyRSSPayload = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Empty</title></channel></rss>`

func payload(body string) *fetch.Payload {
	return &fetch.Payload{
		Source: types.Source{Name: "test"},
		Status: 200,
		Body:   []byte(body),
	}
}

func TestParse_RSS(t *testing.T) {
	entries, err := New().Parse(payload(rssPayload))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "First story", entries[0].Title)
	assert.Equal(t, "guid-1", entries[0].GUID)
	assert.Equal(t, "https://example.com/1", entries[0].Link)
	assert.Equal(t, "<p>Full body</p>", entries[0].Content)
	assert.Equal(t, "Short summary", entries[0].Description)
	require.NotNil(t, entries[0].PublishedParsed)
}

func TestParse_AtomWithExtensions(t *testing.T) {
	entries, err := New().Parse(payload(atomPayload))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "Video title", entry.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc12345678", entry.Link)

	yt, ok := entry.Extensions["yt"]
	require.True(t, ok, "yt namespace must be preserved")
	require.NotEmpty(t, yt["videoId"])
	assert.Equal(t, "abc12345678", yt["videoId"][0].Value)

	media, ok := entry.Extensions["media"]
	require.True(t, ok, "media namespace must be preserved")
	require.NotEmpty(t, media["group"])
	thumbs := media["group"][0].Children["thumbnail"]
	require.NotEmpty(t, thumbs)
	assert.Equal(t, "https://i.ytimg.com/vi/abc12345678/hqdefault.jpg", thumbs[0].Attrs["url"])
}

func TestParse_EmptyFeedIsNotAnError(t *testing.T) {
	entries, err := New().Parse(payload(emptyRSSPayload))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_MalformedPayload(t *testing.T) {
	entries, err := New().Parse(payload("this is not xml or json"))
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, types.IsParseError(err))
}

func TestParse_TruncatedXML(t *testing.T) {
	_, err := New().Parse(payload(`<?xml version="1.0"?><rss><channel><item><title>cut`))
	require.Error(t, err)
	assert.True(t, types.IsParseError(err))
}

func TestParse_ConcurrentUse(t *testing.T) {
	parser := New()
	payloads := []string{rssPayload, atomPayload, emptyRSSPayload}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := parser.Parse(payload(payloads[(i+j)%len(payloads)]))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()
}
