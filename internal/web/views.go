package web

import (
	"net/url"

	"github.com/mlwelles/modusGraph24Wiki/wiki"
)

// CharacterLink is a character name with the URL of its page.
type CharacterLink struct {
	Name string
	URL  string
}

// CharacterListPage is the view model of /char/.
type CharacterListPage struct {
	Characters []CharacterLink
}

// AppearanceView is one APPEARED_IN line of a character page.
type AppearanceView struct {
	Season   string
	Episodes int
}

// CharacterPage is the view model of /char/{name}. Actor is empty when the
// character has no STARRED_AS relationship.
type CharacterPage struct {
	Name        string
	Nationality string
	Actor       string
	Appearances []AppearanceView
	Victims     []CharacterLink
}

// NationalityView is one line of the victim nationality ranking.
type NationalityView struct {
	Name   string
	Deaths int
}

// NationalityPage is the view model of /top/victim_nationalities.
type NationalityPage struct {
	Nationalities []NationalityView
}

// CharacterURL returns the page path of a character. The name is escaped
// as a single path segment, so names containing "/" or "?" still round-trip.
func CharacterURL(name string) string {
	return "/char/" + url.PathEscape(name)
}

func linkTo(name string) CharacterLink {
	return CharacterLink{Name: name, URL: CharacterURL(name)}
}

func newCharacterListPage(names []string) CharacterListPage {
	page := CharacterListPage{Characters: make([]CharacterLink, 0, len(names))}
	for _, name := range names {
		page.Characters = append(page.Characters, linkTo(name))
	}
	return page
}

func newCharacterPage(p *wiki.Profile) CharacterPage {
	page := CharacterPage{
		Name:        p.Character.Name,
		Nationality: p.Character.Nationality,
	}
	if p.Actor != nil {
		page.Actor = p.Actor.Name
	}
	for _, c := range p.Appearances {
		page.Appearances = append(page.Appearances, AppearanceView{Season: c.Season, Episodes: c.Episodes})
	}
	for _, v := range p.Victims {
		page.Victims = append(page.Victims, linkTo(v.Name))
	}
	return page
}

func newNationalityPage(ranked []wiki.VictimNationality) NationalityPage {
	page := NationalityPage{Nationalities: make([]NationalityView, 0, len(ranked))}
	for _, r := range ranked {
		page.Nationalities = append(page.Nationalities, NationalityView{Name: r.Nationality, Deaths: r.Victims})
	}
	return page
}
