package sqlinline

const QInsertPendingDonation = `--sql 81e27ff7-f7e6-4bb8-98a6-cdcbfb1981bf
insert into donations(
  donor_name,
  donor_email,
  amount,
  currency,
  category,
  frequency,
  anonymous,
  payment_reference,
  payment_intent_id,
  notes,
  status,
  created_at
) values (
  $1::text,
  $2::text,
  $3::bigint,
  $4::text,
  $5::text,
  $6::text,
  $7::boolean,
  $8::text,
  $9::text,
  $10::text,
  'pending',
  now()
) returning id, created_at;
`

// Offline collection path: no processor is configured, so the row is created
// already settled.
const QInsertCompletedDonation = `--sql 465a3e7e-594b-4ff9-90b8-3f135f2704af
insert into donations(
  donor_name,
  donor_email,
  amount,
  currency,
  category,
  frequency,
  anonymous,
  payment_reference,
  notes,
  status,
  created_at,
  completed_at
) values (
  $1::text,
  $2::text,
  $3::bigint,
  $4::text,
  $5::text,
  $6::text,
  $7::boolean,
  $8::text,
  $9::text,
  'completed',
  now(),
  now()
) returning id, created_at;
`

// The status guard makes the transition atomic: a duplicate callback delivery
// matches zero rows instead of re-running side effects.
const QCompleteDonation = `--sql b64f6614-f35c-4749-a7cb-7729ac61be3f
update donations
set status = 'completed', completed_at = now()
where payment_intent_id = $1::text and status = 'pending'
returning id, donor_name, donor_email, amount, category, frequency, anonymous, payment_reference, notes, completed_at;
`

const QFailDonation = `--sql f3d01654-042d-42a6-a953-3636aca0857e
update donations
set status = 'failed', failure_reason = $2::text
where payment_intent_id = $1::text and status = 'pending'
returning id, donor_name, donor_email, anonymous;
`

const QListRecentDonations = `--sql 4e9a517b-f3b2-43ee-8326-09149727e1cf
select id, donor_name, donor_email, amount, currency, category, frequency, anonymous, payment_reference, status, created_at
from donations
order by created_at desc
limit $1::int;
`
