package source

import "testing"

func TestExtractObjectID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "reel", url: "https://www.facebook.com/reel/123456789", want: "123456789"},
		{name: "page video", url: "https://facebook.com/somepage/videos/987654321", want: "987654321"},
		{name: "watch", url: "https://www.facebook.com/watch/?v=555", want: "555"},
		{name: "v query param", url: "https://www.facebook.com/watch?app=fb&v=777", want: "777"},
		{name: "photo fbid", url: "https://www.facebook.com/photo.php?fbid=444&set=a.1", want: "444"},
		{name: "story permalink", url: "https://www.facebook.com/permalink.php?story_fbid=333&id=22", want: "333"},
		{name: "page post", url: "https://www.facebook.com/somepage/posts/111222", want: "111222"},
		{name: "group permalink", url: "https://www.facebook.com/groups/100/permalink/200", want: "100_200"},
		{name: "group post", url: "https://www.facebook.com/groups/100/posts/300", want: "100_300"},
		{name: "composite numeric id", url: "123456789_987654321", want: "123456789_987654321"},
		{name: "plain numeric id", url: "424242", want: "424242"},
		{name: "whitespace trimmed", url: "  424242  ", want: "424242"},
		{name: "unrelated url", url: "https://example.com/foo", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractObjectID(tt.url); got != tt.want {
				t.Errorf("ExtractObjectID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
