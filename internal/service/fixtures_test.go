package service

import (
	"time"

	"meterportal/internal/model"
)

const testBucket = "production-epbp_participant_1"

var testNow = time.Date(2024, 3, 10, 12, 34, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

var testUser = model.User{Email: "jane@example.com", Name: "Jane"}

const participantFileXML = `<?xml version="1.0" encoding="UTF-8"?>
<hbd:participant xmlns:hbd="http://hourlybuildingdata.com/hbd">
  <hbd:name>Acme Towers</hbd:name>
  <hbd:connectors>
    <hbd:connector>
      <hbd:function>xlsx</hbd:function>
      <hbd:timezone>America/New_York</hbd:timezone>
      <hbd:meterURI>production-epbp_participant_1/config/meter_2.xml</hbd:meterURI>
      <hbd:meterURI>production-epbp_participant_1/config/meter_3.xml</hbd:meterURI>
      <hbd:fetchStrategy>
        <hbd:push><hbd:description>Monthly utility export</hbd:description></hbd:push>
      </hbd:fetchStrategy>
      <hbd:rawDataLocation hbd:bucket="production-epbp_participant_1" hbd:path="xlsx"/>
    </hbd:connector>
  </hbd:connectors>
  <hbd:properties>
    <hbd:propertyURI>production-epbp_participant_1/config/property_1.xml</hbd:propertyURI>
    <hbd:propertyURI>production-epbp_participant_1/config/property_2.xml</hbd:propertyURI>
  </hbd:properties>
</hbd:participant>`

const meterFileXML = `<hbd:meter xmlns:hbd="http://hourlybuildingdata.com/hbd" xmlns:haystack="http://project-haystack.org">
  <hbd:meterURI>production-epbp_participant_1/config/meter_1.xml</hbd:meterURI>
  <hbd:type>Electric</hbd:type>
  <hbd:updateFrequency>Hourly</hbd:updateFrequency>
  <hbd:meteredDataLocation hbd:bucket="production-epbp_participant_1" hbd:path="meters/meter_1"/>
  <hbd:tags>
    <haystack:haystack>
      <haystack:elec>m</haystack:elec>
    </haystack:haystack>
  </hbd:tags>
</hbd:meter>`

const occupancyMeterXML = `<hbd:meter xmlns:hbd="http://hourlybuildingdata.com/hbd">
  <hbd:meterURI>production-epbp_participant_1/config/meter_2.xml</hbd:meterURI>
  <hbd:type>Occupancy</hbd:type>
</hbd:meter>`

const propertyFileXML = `<hbd:property xmlns:hbd="http://hourlybuildingdata.com/hbd" xmlns:espm="http://portfoliomanager.energystar.gov/ns">
  <espm:name>Acme Tower One</espm:name>
  <espm:address address1="1 Main St" address2="Floor 2" city="New York"/>
  <espm:grossFloorArea><espm:value>125000</espm:value></espm:grossFloorArea>
</hbd:property>`
