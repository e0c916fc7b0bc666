/*
Package jsont compiles and renders text templates whose directives draw
content from a JSON-like data context.

Templates are arbitrary text with <? ... ?> directives embedded in it:

	<h1><?= report.title ?></h1>
	<? if report.rows ?>
	<ul>
	<? for row report.rows ?>  <li><?= row.name ?>: <?= row.total ?></li>
	<? endfor ?></ul>
	<? else ?>
	<p>Nothing to report.</p>
	<? endif ?>
	<? include "footer.tpl" ?>

Directive reference:

	<?= query ?>              shorthand for <? echo query ?>
	<? echo query ?>          write the value at query, or nothing if absent
	<? if query ?>            body renders when the value is truthy
	<? ifexist query ?>       body renders when the value is present at all
	<? elsif query ?>         (or elif) further truthy branches
	<? else ?>                fallback branch
	<? endif ?>               closes if/ifexist
	<? for name query ?>      body renders once per element of the list at
	                          query, with the element bound to name
	<? endfor ?>              closes for
	<? include "file" ?>      renders another template with the same data

Query paths are dot-separated names with optional list indexes, such as
"order.lines[2].sku".  An absent path renders nothing; it is not an error.

Usage example

Typically an application keeps a directory of template files.  On startup,
compile them all into a Registry, optionally watching for changes during
development:

	registry, err := jsont.NewBundle().
		WatchFiles(mode == "dev").         // re-compile templates on change
		AddGlobalsFile("views/globals.yaml").
		AddTemplateDir("views").           // load *.tpl recursively
		Compile()

To render a page:

	err := registry.Render(w, "views/report.tpl", map[string]interface{}{
		"report": report,
	})

For one-off renders of in-memory sources there is RenderString.  Compiled
templates are immutable and may be rendered concurrently; the data context
passed to a render must not be shared with concurrent writers.
*/
package jsont
