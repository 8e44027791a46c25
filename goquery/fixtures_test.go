package goquery_test

const ebayHTML = `<!DOCTYPE html>
<html>
<body>
<div id="srchrslt-content">
	<ul>
		<li>
			<article class="aditem" data-adid="2001">
				<div class="aditem-main">
					<div class="aditem-main--top">
						<div class="aditem-main--top--left">
							10115 Mitte
						</div>
					</div>
					<div class="aditem-main--middle">
						<h2><a class="ellipsis" href="/s-anzeige/helle-wohnung/2001">Helle
							Wohnung</a></h2>
						<p class="aditem-main--middle--price">
							650 € VB
						</p>
					</div>
				</div>
			</article>
		</li>
		<li>
			<article class="aditem" data-adid="2000">
				<div class="aditem-main">
					<div class="aditem-main--top">
						<div class="aditem-main--top--left">12043 Neukölln</div>
					</div>
					<div class="aditem-main--middle">
						<h2><a href="/s-anzeige/altbau/2000">Altbau</a></h2>
						<p class="aditem-main--middle--price">700 €</p>
					</div>
				</div>
			</article>
		</li>
	</ul>
</div>
</body>
</html>`

const wg1ZimmerHTML = `<!DOCTYPE html>
<html>
<body>
<div class="wgg_card offer_list_item" data-id="123">
	<div class="card_body">
		<h3 class="truncate_title" title="WG-Zimmer in Kreuzberg">
			<a href="wg-zimmer-in-Berlin-Kreuzberg.123.html">WG-Zimmer in Kreuzberg</a>
		</h3>
		<div class="row">
			<div class="col-xs-11">
				<span>
					2er WG | Berlin Kreuzberg | Oranienstr. 1
				</span>
			</div>
		</div>
		<div class="row">
			<div class="col-xs-3"><b>450 €</b></div>
		</div>
	</div>
</div>
<div class="wgg_card offer_list_item" data-id="122">
	<div class="card_body">
		<h3 title="Older room"><a href="older.122.html">Older room</a></h3>
		<div class="col-xs-11"><span>3er WG | Berlin Wedding | Müllerstr. 2</span></div>
		<b>380 €</b>
	</div>
</div>
</body>
</html>`

const wgWohnungHTML = `<!DOCTYPE html>
<html>
<body>
<div class="list-details-ad-wrapper CLR ">
	<h2 class="headline headline-list-view">
		<a href="/wohnungen-in-Berlin-Mitte.456.html">
			Helle 2-Zimmer-Wohnung
		</a>
	</h2>
	<p>
		Berlin
		Mitte
	</p>
	<strong class="list-details-ad-price"><a href="/wohnungen-in-Berlin-Mitte.456.html">650 €</a></strong>
</div>
<div class="list-details-ad-wrapper CLR ">
	<h2><a href="/older.455.html">Older flat</a></h2>
	<p>Berlin</p>
	<strong class="list-details-ad-price"><a href="#">500 €</a></strong>
</div>
</body>
</html>`

const immoweltHTML = `<!DOCTYPE html>
<html>
<body>
<div class="divObject  listitem_new_wrap">
	<a href="/expose/2abc3">
		<h3>Schöne
			Altbauwohnung</h3>
	</a>
	<div class="hardfact">
		<strong>650 €</strong>
		Kaltmiete
	</div>
	<div class="location location_exact">
		<span>Berlin</span><span>(Mitte)</span>
	</div>
</div>
</body>
</html>`

const immoScout24HTML = `<!DOCTYPE html>
<html>
<body>
<div class="resultlist_entry_data">
	<a href="/expose/98765" title="Neubau mit Balkon">Neubau mit Balkon</a>
	<dl>
		<dt>Kaltmiete</dt>
		<dd class="value">1.250,00 €</dd>
	</dl>
	<span class="street">Friedrichstr. 5,<span>Berlin</span></span>
</div>
</body>
</html>`

const immonetHTML = `<!DOCTYPE html>
<html>
<body>
<div class="selListItem">
	<a href="/angebot/4242" title="Dachgeschoss mit Ausblick">Dachgeschoss mit Ausblick</a>
	<span class="fsLarge">  890 € </span>
	<p class="fsSmall">
		Wohnung · 3 Zimmer
		<span>Berlin</span>
	</p>
</div>
</body>
</html>`

const emptyHTML = `<!DOCTYPE html>
<html><body><p>Keine Ergebnisse</p></body></html>`
