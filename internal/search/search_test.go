package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mealbridge/donor-cli/internal/listing"
)

func fixtures() []listing.View {
	return []listing.View{
		{ID: "1", Title: "Day-old bread", Organization: "City Bakery", Tags: []string{"Vegan"}},
		{ID: "2", Title: "Vegetable soup", Organization: "Soup Kitchen", Tags: []string{"Gluten-Free"}},
		{ID: "3", Title: "Fruit boxes", Organization: "Green Grocer", Tags: []string{"Vegan", "Nut-Free"}},
	}
}

func ids(in []listing.View) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, v.ID)
	}
	return out
}

func TestFilter_EmptyQueryReturnsCollectionUnchanged(t *testing.T) {
	in := fixtures()
	got := Filter(in, "")
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("empty query changed the collection (-want +got):\n%s", diff)
	}

	got = Filter(in, "   ")
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("blank query changed the collection (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchesTagCaseInsensitively(t *testing.T) {
	got := Filter(fixtures(), "vegan")
	if diff := cmp.Diff([]string{"1", "3"}, ids(got)); diff != "" {
		t.Fatalf("unexpected matches (-want +got):\n%s", diff)
	}
}

func TestFilter_MatchesTitleAndOrganization(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "SOUP", want: []string{"2"}},
		{query: "bakery", want: []string{"1"}},
		{query: "fruit", want: []string{"3"}},
		{query: "free", want: []string{"2", "3"}},
		{query: "no such thing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(fixtures(), tt.query)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Fatalf("unexpected matches (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	want := fixtures()
	_ = Filter(in, "vegan")
	if diff := cmp.Diff(want, in); diff != "" {
		t.Fatalf("filter mutated its input (-want +got):\n%s", diff)
	}
}
