package suite

import (
	"fmt"
	"strings"

	"github.com/c360studio/sitecheck/document"
)

func (p *pass) form() []Result {
	contact := p.site.Page(ContactPage)
	if contact == nil {
		return nil
	}

	form, ok := contact.Query("form")
	if !ok {
		return []Result{newResult(GroupForm, "contact page contains a form",
			[]string{contact.Label() + " has no <form>"})}
	}
	results := []Result{newResult(GroupForm, "contact page contains a form", nil)}

	var diags []string
	if !form.Has("input[type=text]") {
		diags = append(diags, "input[type=text] not found")
	}
	if !form.Has("input[type=email]") {
		diags = append(diags, "input[type=email] not found")
	}
	results = append(results, newResult(GroupForm, "form contains a text input and an email input", diags))

	diags = nil
	if email, ok := form.First("input[type=email]"); !ok {
		diags = append(diags, "input[type=email] not found")
	} else if !email.HasAttr("required") {
		diags = append(diags, "email input is not required")
	}
	results = append(results, newResult(GroupForm, "email input set as a required field", diags))

	results = append(results,
		fieldsetsResult(form),
		groupedInputsResult(form, "checkbox", "all checkbox inputs have the same name attribute and have a value attribute set"),
		groupedInputsResult(form, "radio", "all radio button inputs have the same name attribute and have a value attribute set"),
	)

	diags = nil
	if !form.Has("textarea") {
		diags = append(diags, "form does not contain a <textarea>")
	}
	if !form.Has("button") {
		diags = append(diags, "form does not contain a <button>")
	}
	results = append(results, newResult(GroupForm, "form contains a textarea and a submit <button>", diags))

	diags = nil
	if textarea, ok := form.First("textarea"); !ok {
		diags = append(diags, "form does not contain a <textarea>")
	} else if !textarea.HasAttr("placeholder") {
		diags = append(diags, "<textarea> has no placeholder attribute")
	}
	results = append(results, newResult(GroupForm, "textarea contains a placeholder", diags))

	diags = nil
	var problems []string
	for _, input := range form.Find("input") {
		if input.HasAttr("type") && input.HasAttr("id") && input.HasAttr("name") {
			continue
		}
		problems = append(problems, inputLabel(input))
	}
	if len(problems) > 0 {
		diags = append(diags, "inputs with issues [id|name|type] "+strings.Join(problems, ", "))
	}
	results = append(results, newResult(GroupForm, "all form <input> elements must have type, id and name attributes", diags))

	results = append(results, labelsResult(contact, form))
	return results
}

// inputLabel names an input for diagnostics by id, then name, then type.
func inputLabel(input document.Element) string {
	for _, attr := range []string{"id", "name", "type"} {
		if v, ok := input.Attr(attr); ok && v != "" {
			return v
		}
	}
	return "{no id, name or type}"
}

func fieldsetsResult(form document.Element) Result {
	var diags []string
	fieldsets := form.Find("fieldset")
	if len(fieldsets) == 0 {
		diags = append(diags, "no fieldsets found")
	}
	for i, fieldset := range fieldsets {
		if !fieldset.Has("legend") {
			diags = append(diags, fmt.Sprintf("fieldset %d does not have a legend", i+1))
		}
	}
	for _, input := range form.Find("input[type=checkbox], input[type=radio]") {
		if !input.Is("fieldset input") {
			diags = append(diags, fmt.Sprintf("%s %s is not inside a fieldset", input.AttrOr("type", ""), inputLabel(input)))
		}
	}
	return newResult(GroupForm, "checkboxes and radio buttons are contained in a fieldset with a legend", diags)
}

func groupedInputsResult(form document.Element, inputType, name string) Result {
	var diags []string
	inputs := form.Find("fieldset input[type=" + inputType + "]")
	if len(inputs) == 0 {
		diags = append(diags, fmt.Sprintf("no %s inputs found", inputType))
	}

	var (
		first       string
		nameDiffers bool
		noValue     bool
	)
	for i, input := range inputs {
		n := input.AttrOr("name", "")
		if i == 0 {
			first = n
		} else if n != first {
			nameDiffers = true
		}
		if !input.HasAttr("value") {
			noValue = true
		}
	}
	if nameDiffers {
		diags = append(diags, "name attributes are not the same")
	}
	if noValue {
		diags = append(diags, fmt.Sprintf("not all %s inputs have a value attribute", inputType))
	}
	return newResult(GroupForm, name, diags)
}

func labelsResult(page *document.Document, form document.Element) Result {
	ids := make(map[string]bool)
	for _, el := range page.QueryAll("[id]") {
		ids[el.AttrOr("id", "")] = true
	}

	var diags []string
	labels := form.Find("label")
	if len(labels) == 0 {
		diags = append(diags, "no labels found")
	}
	for _, label := range labels {
		text := strings.TrimSpace(label.Text())
		if label.HasChildElements() {
			diags = append(diags, fmt.Sprintf("%s: contains an element - use explicit label", text))
		}
		target := label.AttrOr("for", "")
		switch {
		case target == "":
			diags = append(diags, fmt.Sprintf("%s missing for attribute", text))
		case !ids[target]:
			diags = append(diags, fmt.Sprintf("%s: \"for=%s\" does not match an id on the page", text, target))
		}
	}
	return newResult(GroupForm, "explicit label used with a for attribute linking it to a form element", diags)
}
