package model

import "testing"

func TestEnumValidators(t *testing.T) {
	cases := []struct {
		name  string
		valid func(string) bool
		ok    []string
		bad   []string
	}{
		{
			"language", ValidLanguage,
			[]string{LanguageEnglish, LanguageRussian, LanguageUzbek, LanguageKorean, LanguageTurkish, LanguageOther},
			[]string{"", "en", "DE", "ENGLISH"},
		},
		{
			"age rating", ValidAgeRating,
			[]string{AgeRatingG, AgeRatingPG, AgeRatingPG13, AgeRatingR, AgeRatingNC17},
			[]string{"", "PG13", "18+", "X"},
		},
		{
			"person role", ValidPersonRole,
			[]string{PersonRoleActor, PersonRoleDirector, PersonRoleProducer, PersonRoleWriter},
			[]string{"", "actor", "COMPOSER"},
		},
		{
			"list kind", ValidListKind,
			[]string{ListKindWatch, ListKindWatching, ListKindWatched, ListKindFavorite},
			[]string{"", "watch", "QUEUE"},
		},
		{
			"report kind", ValidReportKind,
			[]string{ReportKindBroken, ReportKindSubtitle, ReportKindContent, ReportKindOther},
			[]string{"", "broken", "SPAM"},
		},
		{
			"activity kind", ValidActivityKind,
			[]string{ActivityReview, ActivityRate, ActivityWatch, ActivityLike, ActivityFollow},
			[]string{"", "review", "COMMENT"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.ok {
				if !tc.valid(v) {
					t.Errorf("%q rejected", v)
				}
			}
			for _, v := range tc.bad {
				if tc.valid(v) {
					t.Errorf("%q accepted", v)
				}
			}
		})
	}
}
