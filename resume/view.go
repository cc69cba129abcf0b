package resume

import (
	"strings"

	"golang.org/x/net/html"
)

// Fragment is the content derived for one region. Nodes replace the region
// children; Attrs are set on the region element itself.
type Fragment struct {
	Region string
	Nodes  []*html.Node
	Attrs  []html.Attribute
}

// ViewRenderer maps a Document into region fragments and writes them into a Page.
// It holds no state between calls.
type ViewRenderer struct{}

// Fragments derives every region fragment for the document, in region order.
func (ViewRenderer) Fragments(doc Document) []Fragment {
	fragments := ProfileFragments(doc.Profile)
	return append(fragments,
		ContactFragment(doc.Contact),
		EducationFragment(doc.Education),
		SkillsFragment(doc.Skills),
		SummaryFragment(doc.Summary),
		ExperienceFragment(doc.Experience),
		ProjectsFragment(doc.Projects),
	)
}

// Render replaces the content of every region. Missing regions fail the whole
// render before anything is written.
func (r ViewRenderer) Render(page *Page, doc Document) error {
	if page == nil {
		return NewError(KindValidation, "page is required", nil)
	}
	if missing := page.Missing(Regions...); len(missing) > 0 {
		return NewError(KindValidation, "page is missing regions: "+strings.Join(missing, ", "), nil)
	}

	for _, fragment := range r.Fragments(doc) {
		if err := applyFragment(page, fragment); err != nil {
			return err
		}
	}
	return nil
}

// RenderHTML returns the serialized fragment for every region. Attribute-only
// regions map to the serialized attribute list.
func (r ViewRenderer) RenderHTML(doc Document) (map[string]string, error) {
	out := make(map[string]string, len(Regions))
	for _, fragment := range r.Fragments(doc) {
		if len(fragment.Attrs) > 0 {
			parts := make([]string, 0, len(fragment.Attrs))
			for _, a := range fragment.Attrs {
				parts = append(parts, a.Key+`="`+html.EscapeString(a.Val)+`"`)
			}
			out[fragment.Region] = strings.Join(parts, " ")
			continue
		}
		markup, err := renderNodes(fragment.Nodes)
		if err != nil {
			return nil, NewError(KindInternal, "render region "+fragment.Region, err)
		}
		out[fragment.Region] = markup
	}
	return out, nil
}

func applyFragment(page *Page, fragment Fragment) error {
	for _, a := range fragment.Attrs {
		if err := page.SetAttr(fragment.Region, a.Key, a.Val); err != nil {
			return err
		}
	}
	if len(fragment.Attrs) > 0 && len(fragment.Nodes) == 0 {
		return nil
	}
	return page.Replace(fragment.Region, fragment.Nodes)
}

// ProfileFragments builds the profile header regions.
func ProfileFragments(profile Profile) []Fragment {
	return []Fragment{
		{Region: RegionProfileName, Nodes: []*html.Node{text(profile.Name)}},
		{Region: RegionProfileTitle, Nodes: []*html.Node{text(profile.Title)}},
		{Region: RegionProfileAvatar, Attrs: []html.Attribute{attr("src", profile.AvatarURL)}},
		{Region: RegionProfileInitials, Nodes: []*html.Node{text(profile.Initials)}},
	}
}

// ContactFragment renders one list item per entry. Entries with a link render
// as an anchor, the rest as plain text.
func ContactFragment(items []ContactItem) Fragment {
	nodes := make([]*html.Node, 0, len(items))
	for _, item := range items {
		icon := appendChildren(
			element("span", "w-8 h-8 rounded-full bg-slate-800 flex items-center justify-center text-blue-400"),
			element("i", item.Icon),
		)

		var label *html.Node
		if link := strings.TrimSpace(item.Link); link != "" {
			label = element("a", "text-slate-300 hover:text-white transition-colors", attr("href", safeHref(link)))
		} else {
			label = element("span", "text-slate-300")
		}
		label.AppendChild(text(item.Text))

		nodes = append(nodes, appendChildren(element("li", "flex items-center gap-3 group"), icon, label))
	}
	return Fragment{Region: RegionContact, Nodes: nodes}
}

// EducationFragment renders one block per education entry.
func EducationFragment(entries []Education) Fragment {
	nodes := make([]*html.Node, 0, len(entries))
	for _, edu := range entries {
		nodes = append(nodes, appendChildren(element("div", "avoid-break"),
			appendChildren(element("h4", "font-bold text-white"), text(edu.Degree)),
			appendChildren(element("p", "text-slate-400 text-sm"), text(edu.School)),
			appendChildren(element("p", "text-slate-500 text-xs mt-1"), text(edu.Year)),
		))
	}
	return Fragment{Region: RegionEducation, Nodes: nodes}
}

// SkillsFragment renders one badge per skill.
func SkillsFragment(skills []string) Fragment {
	nodes := make([]*html.Node, 0, len(skills))
	for _, skill := range skills {
		nodes = append(nodes, appendChildren(
			element("span", "px-3 py-1 bg-slate-800 text-xs rounded-full text-slate-300 border border-slate-700"),
			text(skill),
		))
	}
	return Fragment{Region: RegionSkills, Nodes: nodes}
}

// SummaryFragment renders the summary as plain text.
func SummaryFragment(summary string) Fragment {
	return Fragment{Region: RegionSummary, Nodes: []*html.Node{text(summary)}}
}

// ExperienceFragment renders one timeline block per job. The description
// paragraph is only emitted when the job has one.
func ExperienceFragment(jobs []Experience) Fragment {
	nodes := make([]*html.Node, 0, len(jobs))
	for _, job := range jobs {
		marker := element("div", classList("absolute -left-[9px] top-0 w-4 h-4 rounded-full", job.ColorClass, "border-4 border-white"))

		heading := appendChildren(element("h3", "text-lg font-bold text-slate-800"),
			text(job.Role+" "),
			appendChildren(element("span", "text-slate-500 font-medium text-base"), text(" • "+job.Company)),
		)
		period := appendChildren(
			element("span", classList("text-sm font-semibold", job.PeriodClass, "px-2 py-1 rounded mt-1 sm:mt-0 flex-shrink-0")),
			text(job.Period),
		)
		header := appendChildren(
			element("div", "flex flex-col sm:flex-row sm:justify-between sm:items-baseline mb-3 flex-wrap gap-x-2"),
			heading, period,
		)

		block := appendChildren(element("div", "mb-4 relative pl-4 border-l-2 border-slate-200 avoid-break flow-root"), marker, header)
		if strings.TrimSpace(job.Description) != "" {
			block.AppendChild(appendChildren(element("p", "text-slate-600 text-sm mb-2 leading-tight"), richText(job.Description)...))
		}

		list := element("ul", "list-disc list-outside ml-4 text-slate-600 space-y-1 text-sm leading-[1.4]")
		for _, achievement := range job.Achievements {
			list.AppendChild(appendChildren(element("li", ""), richText(achievement)...))
		}
		block.AppendChild(list)

		nodes = append(nodes, block)
	}
	return Fragment{Region: RegionExperience, Nodes: nodes}
}

// ProjectsFragment renders one card per project with its tags in order.
func ProjectsFragment(projects []Project) Fragment {
	nodes := make([]*html.Node, 0, len(projects))
	for _, project := range projects {
		title := appendChildren(element("div", "flex justify-between items-center mb-2"),
			appendChildren(element("h3", "font-bold text-slate-800 group-hover:text-blue-600 transition-colors"), text(project.Title)),
		)
		description := appendChildren(element("p", "text-sm text-slate-500 mb-3"), richText(project.Description)...)

		tags := element("div", "flex gap-2")
		for _, tag := range project.Tags {
			tags.AppendChild(appendChildren(element("span", "text-xs font-medium bg-slate-100 text-slate-600 px-2 py-0.5 rounded"), text(tag)))
		}

		nodes = append(nodes, appendChildren(
			element("div", "group block border border-slate-200 rounded-lg p-4 hover:border-blue-400 hover:shadow-md transition-all avoid-break"),
			title, description, tags,
		))
	}
	return Fragment{Region: RegionProjects, Nodes: nodes}
}
